package resolvers

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	gqlmodels "brickstock.GO/graphql/models"
)

func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return fmt.Sprint(data), nil
		case reflect.Float32, reflect.Float64:
			return fmt.Sprintf("%.0f", data), nil
		}
		return data, nil
	}
}

func intToBoolHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Bool {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return v != 0, nil
		case int64:
			return v != 0, nil
		case float64:
			return int(v) != 0, nil
		}
		return data, nil
	}
}

var docToPartDecodeHook = mapstructure.ComposeDecodeHookFunc(
	numberToStringHook(),
	intToBoolHook(),
)

// docToPart decodes a search index document into a Part model. Index documents
// carry numeric ids and 0/1 flags; the hooks normalize those.
func docToPart(doc map[string]interface{}) *gqlmodels.Part {
	var part gqlmodels.Part
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       docToPartDecodeHook,
		Result:           &part,
		TagName:          "mapstructure",
		ZeroFields:       true,
	}
	dec, _ := mapstructure.NewDecoder(cfg)
	if err := dec.Decode(doc); err != nil {
		return &gqlmodels.Part{}
	}
	if part.SourceIds == nil {
		part.SourceIds = []*gqlmodels.SourceID{}
	}
	if part.Lots == nil {
		part.Lots = []*gqlmodels.Lot{}
	}
	return &part
}
