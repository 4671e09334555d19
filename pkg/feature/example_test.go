package feature_test

import (
	"fmt"

	"github.com/matzehuels/planviz/pkg/feature"
	"github.com/matzehuels/planviz/pkg/plan"
)

func ExampleDetect() {
	resources := []plan.Resource{
		{Type: "aws_s3_bucket"},
		{Type: "aws_sns_topic"},
		{Type: "aws_sns_topic_policy"},
		{Type: "aws_iam_role"}, // not part of the diagram
	}

	fs := feature.Detect(resources, nil)
	fmt.Println(fs.Enabled())
	// Output:
	// [s3 sns topic_policy]
}

func ExampleDetect_fallback() {
	vars := map[string]plan.Variable{
		"email_addresses": {Value: []any{"a@x.com", "b@y.com"}},
	}

	fs := feature.Detect(nil, vars)
	fmt.Println("subscription:", fs.Subscription)
	fmt.Println("sns:", fs.SNS)
	// Output:
	// subscription: true
	// sns: false
}
