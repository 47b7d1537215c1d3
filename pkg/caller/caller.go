package caller

import (
	"runtime"
	"strings"
)

// Name returns the name of the function that called Name, so spans can be
// named after the function that opens them:
//
//	func (s *Solver) Solve(ctx context.Context) {
//		ctx, span := tracer.Start(ctx, caller.Name()) // "Solver.Solve"
//		defer span.End()
//	}
//
// skip moves further up the stack: caller.Name(1) names the caller's caller.
func Name(skip ...int) string {
	offset := 1
	if len(skip) > 0 {
		offset += skip[0]
	}

	pc, _, _, ok := runtime.Caller(offset)
	if !ok {
		return ""
	}

	details := runtime.FuncForPC(pc)
	if details == nil {
		return ""
	}

	return shorten(details.Name())
}

// shorten turns a fully qualified name into "Func" or "Type.Method".
func shorten(fullName string) string {
	fullName = stripTypeArgs(fullName)

	// drop the import path, "github.com/x/y/tour.(*Solver).Solve" -> "tour.(*Solver).Solve"
	if slash := strings.LastIndex(fullName, "/"); slash >= 0 {
		fullName = fullName[slash+1:]
	}

	parts := strings.Split(fullName, ".")

	// closures: "Run.func1", "Run.func1.2"
	for len(parts) > 1 && isClosure(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}

	switch len(parts) {
	case 0:
		return ""
	case 1, 2:
		return parts[len(parts)-1]
	default:
		typeName := strings.Trim(parts[len(parts)-2], "(*)")
		return typeName + "." + parts[len(parts)-1]
	}
}

// isClosure matches the "func1" and "1" suffixes the compiler gives to
// function literals.
func isClosure(part string) bool {
	return allDigits(strings.TrimPrefix(part, "func"))
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}

// stripTypeArgs drops the "[...]" of generic functions and receivers.
func stripTypeArgs(name string) string {
	var b strings.Builder
	depth := 0
	for _, r := range name {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}

	return b.String()
}
