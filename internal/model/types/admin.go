package types

type RunETLRequest struct {
	// Source overrides the configured survey location for this run.
	Source string `json:"source" validate:"omitempty,max=2048"`
}

type PurgeCacheRequest struct {
	Name string `query:"name" validate:"omitempty,max=64"`
}
