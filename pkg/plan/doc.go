// Package plan loads the parts of a Terraform plan that planviz needs.
//
// # Overview
//
// A plan is the JSON document produced by `terraform show -json tfplan`.
// Only two branches are read:
//
//	{
//	  "planned_values": {"root_module": {"resources": [{"type": "aws_s3_bucket", ...}]}},
//	  "variables": {"email_addresses": {"value": ["ops@example.com"]}}
//	}
//
// Everything else in the document is ignored.
//
// # Tolerance
//
// [Load] treats a missing file as an empty plan rather than an error, so a
// fresh checkout without a plan still produces a (minimal) diagram. Missing
// or wrongly shaped branches decode to empty defaults. Only a document that
// is not a JSON object fails, with code INVALID_PLAN.
//
// Individual resources are decoded one at a time; an entry that is not an
// object, or whose "type" is not a string, yields a [Resource] with an empty
// Type that feature detection skips.
//
// # Variable files
//
// [LoadVarFile] reads a Terraform .tfvars file (HCL syntax) into the same
// [Variable] shape, so callers can supply variables the plan does not carry.
// Merge the two with [Document.MergeVariables]; plan values take precedence.
package plan
