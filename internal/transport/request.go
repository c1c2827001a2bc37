package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/stocksync/pkg/errors"
)

// maxErrorBody bounds how much of an error response ends up in messages.
const maxErrorBody = 512

// DecodeResponse closes resp and decodes a JSON body into target.
// Non-2xx statuses become *errors.APIError and undecodable bodies become
// *errors.ProtocolError.
func DecodeResponse(resp *http.Response, target any, marketplace, endpoint string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.TransportError{
			Marketplace: marketplace,
			Operation:   endpoint,
			Err:         err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.APIError{
			Marketplace: marketplace,
			StatusCode:  resp.StatusCode,
			Endpoint:    endpoint,
			Message:     errorMessage(body, resp.Status),
		}
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &errors.ProtocolError{
			Marketplace: marketplace,
			Endpoint:    endpoint,
			Message:     "undecodable response body",
			Err:         errors.WrapParse("json", endpoint, err),
		}
	}
	return nil
}

func errorMessage(body []byte, status string) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return status
	}
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return msg
}
