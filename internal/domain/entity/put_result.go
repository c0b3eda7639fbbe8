package entity

// PutResult reports the outcome of a blob put. SessionToken is set even
// when the put fails so callers can resume the same upload later.
type PutResult struct {
	SessionToken string `json:"session_token"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
}
