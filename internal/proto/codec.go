package proto

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	protov2 "google.golang.org/protobuf/proto"
)

// Name is the codec name and the gRPC content-subtype ("application/grpc+json").
const Name = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec marshals contract messages as JSON. Protobuf messages (emptypb.Empty
// and friends) go through protojson, everything else through encoding/json.
type Codec struct{}

var unmarshalOpts = protojson.UnmarshalOptions{DiscardUnknown: true}

func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(protov2.Message); ok {
		return protojson.Marshal(m)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec: marshal %T: %w", v, err)
	}
	return b, nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(protov2.Message); ok {
		return unmarshalOpts.Unmarshal(data, m)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec: unmarshal %T: %w", v, err)
	}
	return nil
}

func (Codec) Name() string { return Name }
