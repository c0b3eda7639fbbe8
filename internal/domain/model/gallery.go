package model

// GalleryImage is an image staged during one edit session. It never
// outlives the session: on commit it either joins a story's image list or
// moves to the deleted set.
type GalleryImage struct {
	LocalRef   string
	RemotePath string
}
