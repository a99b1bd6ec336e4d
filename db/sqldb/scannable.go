package sqldb

type targetFieldsProvider interface {
	// TargetFields returns pointers to the fields, in SELECT column order
	TargetFields() []any
}

type Scannable[T any] interface {
	*T                   // exact pointer type, so MP is inferred from M
	targetFieldsProvider // must implement targetFieldsProvider
}
