package analysis

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const defaultMimeType = "image/jpeg"

// DecodeImage strips an optional data URI prefix ("data:image/png;base64,")
// and decodes the payload. The MIME type comes from the prefix, else from
// content sniffing, else defaults to image/jpeg.
func DecodeImage(encoded string) ([]byte, string, error) {
	encoded = strings.TrimSpace(encoded)
	declared := ""
	if strings.HasPrefix(encoded, "data:") {
		header, payload, ok := strings.Cut(encoded, ",")
		if !ok {
			return nil, "", &AnalysisError{Reason: ReasonInvalidImage, Message: "malformed data URI"}
		}
		declared = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		encoded = payload
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, "", &AnalysisError{Reason: ReasonInvalidImage, Message: "image is not valid base64", Err: err}
	}
	if len(data) == 0 {
		return nil, "", &AnalysisError{Reason: ReasonInvalidImage, Message: "image is empty"}
	}

	if strings.HasPrefix(declared, "image/") {
		return data, declared, nil
	}
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		return data, sniffed, nil
	}
	return data, defaultMimeType, nil
}
