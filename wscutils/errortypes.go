package wscutils

import (
	_ "embed"
	"fmt"
	"io"
	"log"

	"gopkg.in/yaml.v3"
)

//go:embed errortypes.yaml
var defaultErrorTypes []byte

// ErrorType is the message id and error code reported for one kind of failure.
type ErrorType struct {
	MsgID   int    `yaml:"msgid"`
	ErrCode string `yaml:"errcode"`
}

// ErrorTypes is the catalogue loaded from YAML.
type ErrorTypes struct {
	Default     ErrorType            `yaml:"default"`
	InvalidJSON ErrorType            `yaml:"invalid_json"`
	Validation  map[string]ErrorType `yaml:"validation"`
}

func init() {
	if err := loadErrorTypes(defaultErrorTypes); err != nil {
		log.Panic(err)
	}
}

// LoadErrorTypes replaces the catalogue of validation tags, message ids and error codes
// with the YAML document read from r.
func LoadErrorTypes(r io.Reader) error {
	byteValue, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read error types: %w", err)
	}
	return loadErrorTypes(byteValue)
}

func loadErrorTypes(byteValue []byte) error {
	var types ErrorTypes
	if err := yaml.Unmarshal(byteValue, &types); err != nil {
		return fmt.Errorf("failed to parse error types: %w", err)
	}

	msgIDs := make(map[string]int, len(types.Validation))
	errCodes := make(map[string]string, len(types.Validation))
	for tag, et := range types.Validation {
		msgIDs[tag] = et.MsgID
		errCodes[tag] = et.ErrCode
	}

	SetValidationTagToMsgIDMap(msgIDs)
	SetValidationTagToErrCodeMap(errCodes)
	if types.Default.MsgID != 0 {
		SetDefaultMsgID(types.Default.MsgID)
	}
	if types.Default.ErrCode != "" {
		SetDefaultErrCode(types.Default.ErrCode)
	}
	if types.InvalidJSON.MsgID != 0 {
		SetMsgIDInvalidJSON(types.InvalidJSON.MsgID)
	}
	if types.InvalidJSON.ErrCode != "" {
		SetErrCodeInvalidJSON(types.InvalidJSON.ErrCode)
	}
	return nil
}
