package transition

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/model"
)

var allActions = []Action{ActionCancel, ActionPrepareFood, ActionFoodReady, ActionPickUpFood, ActionDeliverFood}

func TestEncodeDecode(t *testing.T) {
	for _, id := range []string{"order-42", "a_b_c", "7"} {
		for _, a := range allActions {
			token := Encode(id, a)
			gotID, gotAction, err := Decode(token)
			require.NoError(t, err, token)
			assert.Equal(t, id, gotID)
			assert.Equal(t, a, gotAction)
		}
	}
}

func TestEncodeFormat(t *testing.T) {
	assert.Equal(t, "order-42_foodReady", Encode("order-42", ActionFoodReady))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"no separator", "order42cancel", ErrMalformedToken},
		{"empty order id", "_cancel", ErrMalformedToken},
		{"empty action", "order-42_", ErrMalformedToken},
		{"empty token", "", ErrMalformedToken},
		{"unknown action", "order-42_teleport", ErrUnknownAction},
		{"action case matters", "order-42_Cancel", ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.token, de.Token)
		})
	}
}

func TestResolveCancel(t *testing.T) {
	d, err := Resolve("order-42", ActionCancel)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, d.Method)
	assert.Equal(t, "/orders/order-42/status/cancel", d.Path)
	assert.Equal(t, map[string]string{"reason": "Canceled by user"}, d.Payload)
}

func TestResolveDeliveryStatus(t *testing.T) {
	d, err := Resolve("order-42", ActionFoodReady)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, d.Method)
	assert.Equal(t, "/deliveries/order-42", d.Path)
	assert.Equal(t, map[string]string{"status": "foodReady"}, d.Payload)
}

func TestResolveNonCancelActions(t *testing.T) {
	for _, a := range allActions[1:] {
		d, err := Resolve("x", a)
		require.NoError(t, err)
		assert.Equal(t, "/deliveries/x", d.Path)
		assert.Equal(t, string(a), d.Payload["status"])
	}
}

func TestResolveEscapesOrderID(t *testing.T) {
	d, err := Resolve("a/b c", ActionPickUpFood)
	require.NoError(t, err)
	assert.Equal(t, "/deliveries/a%2Fb%20c", d.Path)
}

func TestResolveUnknownAction(t *testing.T) {
	_, err := Resolve("order-42", "teleport")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, []Action{ActionPrepareFood, ActionCancel}, Available(model.StatusCreated))
	assert.Equal(t, []Action{ActionFoodReady}, Available(model.StatusFoodInPreparation))
	assert.Equal(t, []Action{ActionPickUpFood}, Available(model.StatusFoodReady))
	assert.Equal(t, []Action{ActionDeliverFood}, Available(model.StatusFoodPicked))
	assert.Empty(t, Available(model.StatusFoodDelivered))
	assert.Empty(t, Available(model.StatusCanceled))
	assert.Empty(t, Available("PREPARING"))
}
