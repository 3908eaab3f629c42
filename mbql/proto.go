package mbql

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToProto encodes the clause as a protobuf list value with the same shape as its JSON form.
func (c *Clause) ToProto() (*structpb.ListValue, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	args := c.args()
	if opts := c.options(); opts != nil {
		args = append(args, opts)
	}
	list, err := structpb.NewList(args)
	if err != nil {
		return nil, errors.Wrap(err, "convert clause to proto")
	}
	return list, nil
}

// FromProto decodes a clause previously encoded with ToProto.
func FromProto(list *structpb.ListValue) (*Clause, error) {
	if list == nil {
		return nil, errors.Wrap(ErrMalformedClause, "proto clause is nil")
	}
	return fromArgs(list.AsSlice())
}
