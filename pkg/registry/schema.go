// pkg/registry/schema.go
package registry

type ActionRegistry struct {
	Version     string   `json:"version"`
	LastUpdated string   `json:"lastUpdated"`
	Actions     []Action `json:"actions"`
}

// Action describes one assistant action and the job type it is served on.
type Action struct {
	ID          string                 `json:"id"`
	DisplayName string                 `json:"displayName"`
	Description string                 `json:"description"`
	WorkerName  string                 `json:"workerName"`
	TaskType    string                 `json:"taskType"`
	Generative  bool                   `json:"generative"`
	InputSchema map[string]interface{} `json:"inputSchema"`
	ErrorCodes  []string               `json:"errorCodes"`
	Timeout     string                 `json:"timeout"`
	Retries     int                    `json:"retries"`
	Tags        []string               `json:"tags"`
}
