package upstream

import (
	"encoding/json"
	"strings"

	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/types"
)

// envelope is the backend's response wrapper. The status field arrives as a
// number or a numeric string depending on the controller, and the body status
// is authoritative over the transport status.
type envelope struct {
	Status  types.FlexInt   `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

const envelopeSuccess = 200

const genericRejection = "the marketplace backend rejected the request"

func decodeEnvelope(httpStatus int, raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return decodeFailure(httpStatus, err)
	}

	if env.Status.Int() != envelopeSuccess {
		message := strings.TrimSpace(env.Message)
		if message == "" {
			message = genericRejection
		}
		return pkgerrors.New(pkgerrors.CodeUpstream, message)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode upstream data")
	}
	return nil
}

func decodeFailure(httpStatus int, err error) error {
	if httpStatus >= 500 {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marketplace backend unavailable")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode upstream response")
}
