// Package feature reduces a Terraform plan to the set of optional
// capabilities the architecture diagram can show.
//
// # Feature Set
//
// A [Set] is a closed record of eight flags. Each flag maps to exactly one
// Terraform resource type:
//
//	s3            aws_s3_bucket
//	sns           aws_sns_topic
//	subscription  aws_sns_topic_subscription
//	versioning    aws_s3_bucket_versioning
//	encryption    aws_s3_bucket_server_side_encryption_configuration
//	lifecycle     aws_s3_bucket_lifecycle_configuration
//	pab           aws_s3_bucket_public_access_block
//	topic_policy  aws_sns_topic_policy
//
// Resources of any other type, or without a type, are skipped.
//
// # Subscription Fallback
//
// Subscriptions are usually declared with count = length(var.email_addresses),
// and plans rendered before the first apply can lack the resource. When no
// aws_sns_topic_subscription is planned, [Detect] falls back to the
// email_addresses variable: a non-empty list of strings enables the
// subscription flag. No other flag has a fallback.
//
// # Usage
//
//	doc, _ := plan.Load("../plan.json")
//	fs := feature.Detect(doc.Resources, doc.Variables, feature.WithLogger(logger))
//	fmt.Println(fs.Enabled()) // [s3 sns topic_policy]
package feature
