package utils

func PtrFloat32(f float32) *float32 {
	return &f
}
