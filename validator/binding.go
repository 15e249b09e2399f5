package validator

import "reflect"

// Binding returns a gin binding.StructValidator that checks `validate` tags
// and reports failures as Errors. Install it with
//
//	binding.Validator = validator.Binding()
func Binding() *StructValidator {
	return &StructValidator{}
}

// StructValidator adapts the package validator to gin's binding
type StructValidator struct{}

// ValidateStruct validates structs, pointers to structs and slices of them.
// Other kinds are skipped.
func (v *StructValidator) ValidateStruct(obj any) error {
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Struct:
		return Struct(value.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := v.ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Engine returns the underlying *validator.Validate
func (v *StructValidator) Engine() any {
	return validate
}
