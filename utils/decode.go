package utils

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// Decode fills out from a loosely typed map, matching on json tags. Strings
// holding numbers or bools are converted, so both JSON params and Redis
// hashes decode into the same structs.
func Decode(input interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToNumberHookFunc(),
		Result:     out,
		TagName:    "json",
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func stringToNumberHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from != reflect.String {
			return data, nil
		}
		s := data.(string)
		switch to {
		case reflect.Int:
			return strconv.Atoi(s)
		case reflect.Float64:
			return strconv.ParseFloat(s, 64)
		case reflect.Bool:
			return strconv.ParseBool(s)
		}
		return data, nil
	}
}
