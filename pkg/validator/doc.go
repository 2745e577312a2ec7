// Package validator provides the rule-building helpers bones use to check
// client input.
//
// A Rule pairs a boolean Check function with a translation-friendly
// ValidationError. First evaluates rules in order and returns the error of
// the first one that fails. Failures are collected in ValidationErrors,
// which satisfies the error interface.
//
// Every ValidationError carries a Severity:
//
//   - NotSet   – the field was not submitted at all
//   - Empty    – the field was submitted without a value
//   - Invalid  – the value was submitted but rejected
//
// Callers use the severity to decide whether a missing optional field is an
// error or simply means "keep the stored value".
//
// # Usage
//
//	if err := validator.First(
//	    validator.MaxLenString("name", name, 200),
//	    validator.RangeNum("age", age, 0, 130),
//	); err != nil {
//	    errs.Add(*err)
//	}
//	if errors.Is(errs, validator.ErrValidationFailed) {
//	    for _, field := range errs.Fields() {
//	        log.Println(field, errs.Get(field))
//	    }
//	}
//
// Password checks follow the field semantics of the framework: a minimum
// length plus a threshold of character-class tests (upper case, lower case,
// digits, other characters), with messages keyed for translation under
// server.bones.passwordBone.
//
// The package is stateless and safe for concurrent use.
package validator
