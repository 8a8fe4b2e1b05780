package errors

import (
	"github.com/goccy/go-json"
)

// ErrorResponse is the flat JSON form of an error. The wrapped chain is not
// included.
type ErrorResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	Classification string `json:"classification"`

	// Path is the tree location the error was reported at, if any.
	Path string `json:"path,omitempty"`

	// Context holds the remaining metadata.
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToJSON flattens any error into an ErrorResponse. Errors that are not an
// Error render as CodeUnknown with their Error() text. Returns nil for nil.
//
//	if err := fstree.Encode(fsys, root, v); err != nil {
//		_ = json.NewEncoder(os.Stderr).Encode(errors.ToJSON(err))
//	}
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	var coded Error
	if !As(err, &coded) {
		return &ErrorResponse{
			Code:           string(CodeUnknown),
			Message:        err.Error(),
			Classification: string(ClassificationPermanent),
		}
	}

	resp := newResponse(coded.Code(), coded.Classification(), coded.Message(), coded.Context())
	if resp.Path == "" {
		resp.Path = PathOf(err)
	}
	return resp
}

func newResponse(code ErrorCode, class ErrorClassification, message string, ctx map[string]interface{}) *ErrorResponse {
	resp := &ErrorResponse{
		Code:           string(code),
		Message:        message,
		Classification: string(class),
	}
	for k, v := range ctx {
		if p, ok := v.(string); ok && k == PathKey {
			resp.Path = p
			continue
		}
		if resp.Context == nil {
			resp.Context = make(map[string]interface{}, len(ctx))
		}
		resp.Context[k] = v
	}
	return resp
}

// MarshalJSON renders the error as an ErrorResponse:
//
//	err := errors.NewAt(errors.CodeEmptyFile, "empty file", "svc/name")
//	data, _ := json.Marshal(err)
//	// {"code":"EMPTY_FILE","message":"empty file","classification":"PERMANENT","path":"svc/name"}
func (e *codedError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(newResponse(e.code, e.classification, e.message, e.context))
	if err != nil {
		return nil, &codedError{
			code:           CodeInternal,
			classification: ClassificationPermanent,
			message:        "failed to marshal error response",
			cause:          err,
		}
	}
	return data, nil
}
