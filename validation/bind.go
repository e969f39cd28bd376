package validation

import (
	"encoding/json"
	"net/http"

	"github.com/user/minilinkedin-go/apperror"
)

// MsgInvalidBody is returned when a request body is not decodable JSON.
const MsgInvalidBody = "Invalid request body"

// Normalizer is implemented by request types that clean their fields
// (trimming, lowercasing) before the rules run.
type Normalizer interface {
	Normalize()
}

// Bind decodes the JSON body of r into dst, normalizes it when dst is a
// Normalizer, and validates it. dst must be a pointer to a struct.
func (v *Validator) Bind(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewBadRequestError(MsgInvalidBody, err)
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return v.Struct(dst)
}
