package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_URLSortsKeys(t *testing.T) {
	req := request(nil)
	got := req.URL(map[string]string{"title": "Heat & Dust", "id": "7", "action": "play"})
	assert.Equal(t, testBase+"?action=play&id=7&title=Heat+%26+Dust", got)
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"empty", "", map[string]string{}},
		{"leading question mark", "?action=list_movies&id=42", map[string]string{"action": "list_movies", "id": "42"}},
		{"escaped", "action=play&title=Heat+%26+Dust", map[string]string{"action": "play", "title": "Heat & Dust"}},
		{"first value wins", "id=1&id=2", map[string]string{"id": "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuery_Malformed(t *testing.T) {
	_, err := ParseQuery("id=%zz")
	assert.Error(t, err)
}

func TestRequest_RoundTrip(t *testing.T) {
	req := request(nil)
	u := req.URL(map[string]string{"action": "other_action", "id": "603", "title": "Léon"})

	parsed, err := NewRequest(testBase, 2, u[len(testBase):])
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"action": "other_action", "id": "603", "title": "Léon"}, parsed.Params)
	assert.Equal(t, 2, parsed.Handle)
}

func TestProtocolError_Message(t *testing.T) {
	assert.Equal(t, `"bogus": unknown action`, (&ProtocolError{Action: "bogus", Err: ErrUnknownAction}).Error())
	assert.Equal(t, "play: id: missing parameter", (&ProtocolError{Action: ActionPlay, Param: ParamID, Err: ErrMissingParam}).Error())
	assert.Equal(t, `play: id "x": invalid parameter`, (&ProtocolError{Action: ActionPlay, Param: ParamID, Value: "x", Err: ErrInvalidParam}).Error())
}
