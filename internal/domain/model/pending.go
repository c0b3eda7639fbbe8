package model

// PendingUpload records a local image that is not yet confirmed present at
// its remote path. It survives process restarts until the blob store
// confirms the object exists.
type PendingUpload struct {
	ID           int64
	RemotePath   string
	SourceRef    string
	SessionToken string
}

// PendingDelete records a remote object that should no longer exist.
type PendingDelete struct {
	ID         int64
	RemotePath string
}
