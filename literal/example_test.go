package literal_test

import (
	"fmt"

	"github.com/coregx/thompson/literal"
	"github.com/coregx/thompson/syntax"
)

func ExampleExtractor_Extract() {
	postfix, _ := syntax.Parse("colou?r")
	res := literal.New(literal.DefaultConfig()).Extract(postfix)
	for _, lit := range res.Exact.Literals() {
		fmt.Println(string(lit.Bytes))
	}
	// Output:
	// colour
	// color
}

func ExampleExtractor_ExtractPrefixes() {
	postfix, _ := syntax.Parse("(get|post)/.*")
	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(postfix)
	for _, lit := range prefixes.Literals() {
		fmt.Println(lit)
	}
	// Output:
	// literal{get/, complete=false}
	// literal{post/, complete=false}
}

func ExampleSeq_Minimize() {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foobar"), false),
		literal.NewLiteral([]byte("foo"), false),
		literal.NewLiteral([]byte("bar"), false),
	)
	seq.Minimize()
	fmt.Println(seq.Len())
	// Output: 2
}
