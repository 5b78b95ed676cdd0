package file

// -- List Dir --

type ListDirRequest struct {
	Path string `json:"path"`
}

func (r *ListDirRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

// -- Read File --

type ReadFileRequest struct {
	Path string `json:"path"`
}

func (r *ReadFileRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

// -- Write File --

// WriteFileRequest keeps Content as a pointer so that an explicit empty
// string (truncate) is distinguishable from a missing argument.
type WriteFileRequest struct {
	Path    string  `json:"path"`
	Content *string `json:"content"`
}

func (r *WriteFileRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	if r.Content == nil {
		return ErrContentRequired
	}
	return nil
}

// -- Tail File --

type TailFileRequest struct {
	Path  string `json:"path"`
	Lines *int   `json:"lines"`
}

func (r *TailFileRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	if r.Lines != nil && *r.Lines < 1 {
		return ErrInvalidLines
	}
	return nil
}
