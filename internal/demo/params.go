package demo

import (
	"encoding/json"
	"fmt"

	navhttp "github.com/aretw0/navkit/pkg/adapters/http"
	"github.com/aretw0/navkit/pkg/domain"
)

// DecodeParams decodes the JSON params of an HTTP navigation request: a user
// id for the show and edit screens, a title for confirm.
func DecodeParams(screen domain.ScreenID, raw json.RawMessage) (any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	switch screen {
	case ScreenShowUser, ScreenEditUser:
		var id int
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, fmt.Errorf("%s expects a user id: %w", screen, err)
		}
		return id, nil
	case ScreenConfirm:
		var title string
		if err := json.Unmarshal(raw, &title); err != nil {
			return nil, fmt.Errorf("%s expects a title: %w", screen, err)
		}
		return title, nil
	}
	return navhttp.DecodeAny(screen, raw)
}
