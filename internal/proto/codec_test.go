package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(Name)
	require.NotNil(t, c, "codec must be registered under its content-subtype")
	assert.Equal(t, "json", c.Name())
}

func TestCodec_PlainStruct(t *testing.T) {
	var c Codec
	in := &AccountResponse{Account: &Account{Id: "id-1", Username: "alice", Email: "a@x"}}

	b, err := c.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"account":{"id":"id-1","username":"alice","email":"a@x"}}`, string(b))

	var out AccountResponse
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, in, &out)
}

func TestCodec_ProtoMessage(t *testing.T) {
	var c Codec
	b, err := c.Marshal(&emptypb.Empty{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))

	require.NoError(t, c.Unmarshal([]byte(`{"future_field":1}`), &emptypb.Empty{}))
}

func TestCodec_UnmarshalGarbage(t *testing.T) {
	var c Codec
	var out LoginRequest
	assert.Error(t, c.Unmarshal([]byte("{nope"), &out))
}

func TestGetters_NilSafe(t *testing.T) {
	var a *Account
	var r *AccountResponse
	var l *ListAccountsResponse
	assert.Empty(t, a.GetId())
	assert.Nil(t, r.GetAccount())
	assert.Nil(t, l.GetAccounts())
}
