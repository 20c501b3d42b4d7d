package parallel

import "fmt"

// ProtocolViolation is the panic value raised when a synchronization
// contract is broken: a column published twice in one row, the row
// completion counter overflowed, the row-complete signal fired twice, or
// a barrier saw more arrivals than participants.
//
// A violation means a synchronization bug, not a runtime condition, so
// it is never returned as an error and never recovered by this package.
type ProtocolViolation struct {
	// Op names the operation that detected the violation.
	Op string

	// Detail describes the broken contract.
	Detail string
}

func (v *ProtocolViolation) Error() string {
	return "parallel: protocol violation in " + v.Op + ": " + v.Detail
}

// violate logs and panics with a *ProtocolViolation.
func violate(op, format string, args ...any) {
	v := &ProtocolViolation{Op: op, Detail: fmt.Sprintf(format, args...)}
	slogger().Error("protocol violation", "op", op, "detail", v.Detail)
	panic(v)
}
