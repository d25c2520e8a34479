package validator

import (
	"encoding/json"
	"fmt"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *val.Validate

// ImageTag accepts png, jpeg and webp uploads up to 2 MB.
const ImageTag = "mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"

// dataURIType returns the media type of a "data:<type>;base64," string.
func dataURIType(uri string) string {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return ""
	}

	mediaType, _, found := strings.Cut(rest, ";base64,")
	if !found {
		return ""
	}

	return mediaType
}

func registerMimetypeValidation(field val.FieldLevel) bool {
	var contentType string

	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		contentType = file.Header.Get(constant.RequestHeaderContentType)
	} else if str, ok := field.Field().Interface().(string); ok {
		contentType = dataURIType(str)

		if contentType == "" {
			return false
		}
	}

	allowedTypes := strings.Split(field.Param(), " ")

	return slices.Contains(allowedTypes, contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0
	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		fileSize = int(file.Size)
	} else if str, ok := field.Field().Interface().(string); ok {
		fileSize = len(str)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

// decimalValue lets numeric tags (gt, gte, lte) apply to decimal amounts.
func decimalValue(field reflect.Value) any {
	switch amount := field.Interface().(type) {
	case decimal.Decimal:
		value, _ := amount.Float64()

		return value
	case decimal.NullDecimal:
		if !amount.Valid {
			return nil
		}

		value, _ := amount.Decimal.Float64()

		return value
	}

	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}

	return name
}

func isDay(field val.FieldLevel) bool {
	_, err := timezone.Parse(constant.DayFormat, field.Field().String())

	return err == nil
}

func isStamp(field val.FieldLevel) bool {
	_, err := timezone.ParseStamp(field.Field().String())

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	custom := map[string]val.Func{
		"day":         isDay,
		"stamp":       isStamp,
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

type imageUpload struct {
	File multipart.FileHeader `json:"file" validate:"mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
}

// ValidateImage checks an uploaded file against ImageTag. Var skips tags on struct values, so the
// header is validated as a field.
func ValidateImage(header *multipart.FileHeader) error {
	if header == nil {
		return failure.BadRequestFromString("file is required") //nolint:wrapcheck
	}

	return ValidateStruct(&imageUpload{File: *header})
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
