package errors

// shown when a failure carries no usable message
const FallbackMessage = "Something went wrong"

// reduces any failure reaching the top of a submission to one display string:
// the error's message, the value itself when it is a string, otherwise the fallback.
// an empty message is returned as is
func DisplayMessage(v any) string {
	switch val := v.(type) {
	case error:
		return val.Error()
	case string:
		return val
	default:
		return FallbackMessage
	}
}
