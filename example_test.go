package bytestr_test

import (
	"fmt"

	"github.com/ahrav/go-bytestr"
)

func ExampleBuffer() {
	b, err := bytestr.NewBuffer(4)
	if err != nil {
		panic(err)
	}
	_ = b.AppendChars("Hello, ")
	_ = b.AppendChars("World!")
	_ = b.InsertChars(7, "cool ")

	s, err := b.Finalize()
	if err != nil {
		panic(err)
	}
	defer s.Destroy()

	fmt.Println(s.String(), s.Len(), b.IsValid())
	// Output: Hello, cool World! 18 false
}

func ExampleNewSSO() {
	short, _ := bytestr.SSOFromChars("inline")
	long, _ := bytestr.SSOFromChars("this payload is too long to fit inline")
	defer long.Destroy()

	fmt.Println(short.Kind(), long.Kind())
	// Output: short long
}

func ExampleSpan_Subspan() {
	sp := bytestr.SpanFromChars("byte strings")

	sub, err := sp.Subspan(5, 7)
	fmt.Println(sub.String(), err)

	_, err = sp.Subspan(5, 8)
	fmt.Println(err)
	// Output:
	// strings <nil>
	// bytestr: index or length out of range
}

func ExampleString_MoveToSSO() {
	s, _ := bytestr.StringFromChars("small")
	sso := s.MoveToSSO()

	fmt.Println(sso.Kind(), sso.String(), s.IsValid())
	// Output: short small false
}

func ExampleInterner() {
	in, _ := bytestr.NewInterner(0)
	a, _ := in.InternChars("content-type")
	b, _ := in.InternChars("content-type")

	fmt.Println(&a.Bytes()[0] == &b.Bytes()[0])
	// Output: true
}
