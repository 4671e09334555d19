// Package diagram assembles the renderer-agnostic description of the
// backup-notification architecture.
//
// # Overview
//
// [Assemble] turns a [feature.Set] into a [Spec]: a flat arena of clusters,
// nodes and edges addressed by stable string IDs. Clusters nest through their
// Parent field; nodes name the cluster they sit in. The Spec knows nothing
// about Graphviz; see package render/nodelink for the DOT translation.
//
// # Structure
//
//	Uploader ──put-object──▶ AWS Environment
//	                          ├─ Data Storage Layer      (s3)
//	                          │   ├─ Backup Bucket
//	                          │   ├─ Security & Compliance (encryption, pab)
//	                          │   └─ Data Management       (versioning, lifecycle)
//	                          └─ Event Driven Layer      (sns)
//	                              ├─ Topic Policy        (topic_policy)
//	                              ├─ SNS Topic
//	                              └─ Email Subscriber    (subscription)
//
// Annotations hang off the bucket through undirected association edges.
// The bucket reaches the topic directly, or through the policy node when a
// topic policy is planned. A subscriber is only drawn inside the event layer,
// so subscription without sns has no visible effect.
//
// # Determinism
//
// Assemble is pure: the same feature set always yields an identical Spec,
// with clusters, nodes and edges in the same order.
package diagram
