// Package transition encodes delivery actions into selector tokens and
// resolves them into backend requests.
package transition

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"fooddelivery/internal/model"
)

type Action string

const (
	ActionCancel      Action = "cancel"
	ActionPrepareFood Action = "prepareFood"
	ActionFoodReady   Action = "foodReady"
	ActionPickUpFood  Action = "pickUpFood"
	ActionDeliverFood Action = "deliverFood"
)

const CancelReason = "Canceled by user"

const separator = "_"

var (
	ErrMalformedToken = errors.New("malformed selector token")
	ErrUnknownAction  = errors.New("unknown action")
)

// DecodeError is returned by Decode for tokens that cannot be turned into an
// order id and a known action.
type DecodeError struct {
	Token string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode token %q: %v", e.Token, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (a Action) Valid() bool {
	switch a {
	case ActionCancel, ActionPrepareFood, ActionFoodReady, ActionPickUpFood, ActionDeliverFood:
		return true
	}
	return false
}

func Encode(orderID string, a Action) string {
	return orderID + separator + string(a)
}

// Decode splits token at its last underscore. Order ids may themselves
// contain underscores; actions never do.
func Decode(token string) (string, Action, error) {
	i := strings.LastIndex(token, separator)
	if i < 0 {
		return "", "", &DecodeError{Token: token, Err: fmt.Errorf("%w: no separator", ErrMalformedToken)}
	}

	orderID, action := token[:i], Action(token[i+1:])
	switch {
	case orderID == "":
		return "", "", &DecodeError{Token: token, Err: fmt.Errorf("%w: empty order id", ErrMalformedToken)}
	case action == "":
		return "", "", &DecodeError{Token: token, Err: fmt.Errorf("%w: empty action", ErrMalformedToken)}
	case !action.Valid():
		return "", "", &DecodeError{Token: token, Err: fmt.Errorf("%w: %s", ErrUnknownAction, action)}
	}

	return orderID, action, nil
}

// Descriptor describes the backend request that performs a transition.
type Descriptor struct {
	Method  string
	Path    string
	Payload map[string]string
}

func Resolve(orderID string, a Action) (Descriptor, error) {
	if !a.Valid() {
		return Descriptor{}, fmt.Errorf("resolve %s: %w", a, ErrUnknownAction)
	}

	id := url.PathEscape(orderID)
	if a == ActionCancel {
		return Descriptor{
			Method:  http.MethodPatch,
			Path:    "/orders/" + id + "/status/cancel",
			Payload: map[string]string{"reason": CancelReason},
		}, nil
	}

	return Descriptor{
		Method:  http.MethodPatch,
		Path:    "/deliveries/" + id,
		Payload: map[string]string{"status": string(a)},
	}, nil
}

// Available lists the actions the delivery service accepts for an order in
// status s.
func Available(s model.Status) []Action {
	switch s {
	case model.StatusCreated:
		return []Action{ActionPrepareFood, ActionCancel}
	case model.StatusFoodInPreparation:
		return []Action{ActionFoodReady}
	case model.StatusFoodReady:
		return []Action{ActionPickUpFood}
	case model.StatusFoodPicked:
		return []Action{ActionDeliverFood}
	default:
		return nil
	}
}
