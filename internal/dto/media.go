package dto

// StoreMediaFileParams params for storeMediaFile. Data carries the file
// contents base64 encoded. When DeleteExisting is false an existing file
// with the same name is kept and the stored file gets a suffixed name.
type StoreMediaFileParams struct {
	Filename       string `json:"filename" binding:"required"`
	Data           string `json:"data" binding:"required"`
	DeleteExisting *bool  `json:"deleteExisting"`
}

// ReplaceExisting reports the effective overwrite policy, which defaults
// to true.
func (p *StoreMediaFileParams) ReplaceExisting() bool {
	return p.DeleteExisting == nil || *p.DeleteExisting
}

// RetrieveMediaFileParams params for retrieveMediaFile.
type RetrieveMediaFileParams struct {
	Filename string `json:"filename" binding:"required"`
}

// GetMediaFilesNamesParams params for getMediaFilesNames. Pattern supports
// "*" and "_" wildcards; empty matches everything.
type GetMediaFilesNamesParams struct {
	Pattern string `json:"pattern"`
}

// DeleteMediaFileParams params for deleteMediaFile.
type DeleteMediaFileParams struct {
	Filename string `json:"filename" binding:"required"`
}
