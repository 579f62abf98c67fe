package describe

import "fmt"

// ValidationError reports a request rejected before any inference call
// was made. The offending field is named so the client can fix it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Inference stages, used to tell a vision failure from a speech failure.
const (
	StageVision = "vision"
	StageSpeech = "speech"
)

// InferenceError reports a failed call to one of the inference
// collaborators. The collaborator's error is carried for diagnostics
// but never interpreted.
type InferenceError struct {
	Stage string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s inference failed: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}
