//go:build !(rp2040 || rp2350)

package fmtx

import "fmt"

func Sprintf(format string, a ...any) string { return fmt.Sprintf(format, a...) }
func Errorf(format string, a ...any) error   { return fmt.Errorf(format, a...) }
func Sprint(a ...any) string                 { return fmt.Sprint(a...) }
