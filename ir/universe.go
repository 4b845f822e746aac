package ir

const (
	AnyTypeName    = "Any"
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	StringTypeName = "String"
	BoolTypeName   = "Bool"
)

var (
	IntType    = &TypeName{Name: IntTypeName}
	FloatType  = &TypeName{Name: FloatTypeName}
	StringType = &TypeName{Name: StringTypeName}
	BoolType   = &TypeName{Name: BoolTypeName}
	Any        = &AnyType{}
)
