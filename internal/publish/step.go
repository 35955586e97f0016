package publish

// Step names a stage of the publish pipeline. AcquireToken is visited twice,
// once before the upload and once before the settings patch.
type Step int

const (
	StepStart Step = iota
	StepAuthenticate
	StepAcquireToken
	StepUpload
	StepPatchPublish
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepStart:
		return "start"
	case StepAuthenticate:
		return "authenticate"
	case StepAcquireToken:
		return "acquire_token"
	case StepUpload:
		return "upload"
	case StepPatchPublish:
		return "patch_publish"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// Status is the overall result of a publish run.
type Status int

const (
	Failure Status = iota
	PartialSuccess
	Success
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case PartialSuccess:
		return "partial_success"
	default:
		return "failure"
	}
}

// state is a node of the pipeline. Two states map to StepAcquireToken.
type state int

const (
	stateStart state = iota
	stateAuthenticate
	stateUploadToken
	stateUpload
	statePublishToken
	statePatch
	stateDone
)

// transitions lists, for each state, the step it reports and the state that
// follows it on success. stateDone has no successor.
var transitions = map[state]struct {
	step Step
	next state
}{
	stateStart:        {StepStart, stateAuthenticate},
	stateAuthenticate: {StepAuthenticate, stateUploadToken},
	stateUploadToken:  {StepAcquireToken, stateUpload},
	stateUpload:       {StepUpload, statePublishToken},
	statePublishToken: {StepAcquireToken, statePatch},
	statePatch:        {StepPatchPublish, stateDone},
	stateDone:         {StepDone, stateDone},
}
