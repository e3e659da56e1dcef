// Package calldata implements usecase.CallDataEncoder over
// go-ethereum's accounts/abi package: it ABI-encodes a proxy's
// initializer call from the implementation contract's ABI and the
// method's declared parameter order.
package calldata

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simbachain/libsimba-deploy/internal/domain/models"
)

// Encoder is the default CallDataEncoder, backed by go-ethereum's ABI
// packer.
type Encoder struct{}

// NewEncoder builds an Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// EncodeCallData looks up the ordered parameter list at
// metadata.contract.methods.<method_name>.params, projects args in
// that order, ABI-encodes the call, and returns the proxy
// constructor's {"_logic": address, "_data": hex} argument pair.
// A parameter absent from args packs as its ABI type's zero value,
// matching the originating engine's args.get(name) lookup, for
// address, bool, string, bytes and integer parameters; an absent
// parameter of any other ABI type is an error.
func (e *Encoder) EncodeCallData(ctx context.Context, impl *models.Contract, methodName string, args map[string]any) (map[string]any, error) {
	if impl == nil {
		return nil, fmt.Errorf("calldata: implementation contract is nil")
	}

	parsed, err := parseABI(impl.ABI)
	if err != nil {
		return nil, fmt.Errorf("calldata: parsing implementation ABI: %w", err)
	}

	method, ok := parsed.Methods[methodName]
	if !ok {
		return nil, fmt.Errorf("calldata: method %q not found in implementation ABI", methodName)
	}

	params := methodParams(impl.Metadata, methodName)

	ordered := make([]any, 0, len(params))
	for _, p := range params {
		value, err := coerce(method, p.Name, args[p.Name])
		if err != nil {
			return nil, fmt.Errorf("calldata: argument %q: %w", p.Name, err)
		}
		ordered = append(ordered, value)
	}

	packed, err := parsed.Pack(methodName, ordered...)
	if err != nil {
		return nil, fmt.Errorf("calldata: packing %s: %w", methodName, err)
	}

	return map[string]any{
		"_logic": impl.Address,
		"_data":  "0x" + common.Bytes2Hex(packed),
	}, nil
}

// param is one entry of metadata.contract.methods.<name>.params.
type param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// methodParams reads the ordered parameter list the originating
// engine stores at metadata["contract"]["methods"][name]["params"].
func methodParams(metadata map[string]any, methodName string) []param {
	contract, _ := metadata["contract"].(map[string]any)
	methods, _ := contract["methods"].(map[string]any)
	m, _ := methods[methodName].(map[string]any)
	rawParams, _ := m["params"].([]any)

	params := make([]param, 0, len(rawParams))
	for _, rp := range rawParams {
		entry, ok := rp.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		typ, _ := entry["type"].(string)
		params = append(params, param{Name: name, Type: typ})
	}
	return params
}

// parseABI converts the plan's []models.ABIEntry (decoded from a
// platform compile response) into a go-ethereum *abi.ABI by
// round-tripping through the same JSON shape go-ethereum expects.
func parseABI(entries []models.ABIEntry) (*ethabi.ABI, error) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	parsed, err := ethabi.JSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// coerce converts a loosely-typed JSON value (string, float64, bool,
// nil, ...) into the Go type go-ethereum's Pack expects for the named
// input of method. For address, bool, string, bytes and integer types
// a missing/nil value coerces to the ABI type's zero value; for any
// other type it is an error.
func coerce(method ethabi.Method, name string, value any) (any, error) {
	var arg ethabi.Argument
	found := false
	for _, in := range method.Inputs {
		if in.Name == name {
			arg = in
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("not declared on method %s", method.Name)
	}

	switch arg.Type.T {
	case ethabi.AddressTy:
		s, _ := value.(string)
		return common.HexToAddress(s), nil

	case ethabi.BoolTy:
		b, _ := value.(bool)
		return b, nil

	case ethabi.StringTy:
		s, _ := value.(string)
		return s, nil

	case ethabi.BytesTy:
		s, _ := value.(string)
		return common.FromHex(s), nil

	case ethabi.FixedBytesTy:
		s, _ := value.(string)
		arr := reflect.New(arg.Type.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(common.FromHex(s)))
		return arr.Interface(), nil

	case ethabi.UintTy, ethabi.IntTy:
		bi := toBigInt(value)
		goType := arg.Type.GetType()
		switch goType.Kind() {
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return reflect.ValueOf(bi.Uint64()).Convert(goType).Interface(), nil
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return reflect.ValueOf(bi.Int64()).Convert(goType).Interface(), nil
		}
		return bi, nil

	default:
		if value == nil {
			return nil, fmt.Errorf("no value and no zero-value rule for ABI type %s", arg.Type.String())
		}
		return value, nil
	}
}

// toBigInt coerces a JSON-decoded numeric value (float64 from
// encoding/json, or a string for values too large to round-trip
// through float64) into a *big.Int, defaulting to zero.
func toBigInt(value any) *big.Int {
	switch v := value.(type) {
	case float64:
		bi, _ := big.NewFloat(v).Int(nil)
		return bi
	case string:
		bi, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return big.NewInt(0)
		}
		return bi
	case int:
		return big.NewInt(int64(v))
	case int64:
		return big.NewInt(v)
	default:
		return big.NewInt(0)
	}
}
