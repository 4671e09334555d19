package diagram

import "github.com/matzehuels/planviz/pkg/feature"

// Title is the diagram heading.
const Title = "Secure File Backup Notification Architecture"

// Node IDs. They are stable across runs so that tests and downstream
// tooling can address nodes directly.
const (
	NodeUploader     = "uploader"
	NodeBucket       = "bucket"
	NodeEncryption   = "encryption"
	NodePublicAccess = "public_access_block"
	NodeVersioning   = "versioning"
	NodeLifecycle    = "lifecycle"
	NodeTopic        = "topic"
	NodePolicy       = "topic_policy"
	NodeSubscriber   = "subscriber"
)

// Cluster IDs.
const (
	ClusterEnvironment = "aws"
	ClusterStorage     = "storage"
	ClusterSecurity    = "security"
	ClusterManagement  = "management"
	ClusterEvents      = "events"
)

// Edge labels.
const (
	LabelPutObject     = "put-object"
	LabelObjectCreated = "object-created event"
	LabelNotification  = "notification"
)

// graphAttrs are applied to the root graph.
var graphAttrs = map[string]string{
	"fontsize": "20",
	"bgcolor":  "white",
	"pad":      "0.5",
}

// Assemble builds the architecture graph for fs.
//
// The uploader actor is always present. Everything else is gated on fs:
// storage nodes on S3, event nodes on SNS, annotations on their own flags.
// Absent features are omitted entirely, never drawn as placeholders.
func Assemble(fs feature.Set) *Spec {
	b := newBuilder()
	b.node(NodeUploader, "Uploader", KindActor, "")

	if fs.S3 || fs.SNS {
		b.cluster(ClusterEnvironment, "AWS Environment", "")
	}
	if fs.S3 {
		b.storage(fs)
	}
	if fs.SNS {
		b.events(fs)
	}
	return b.spec
}

func (b *builder) storage(fs feature.Set) {
	b.cluster(ClusterStorage, "Data Storage Layer", ClusterEnvironment)
	b.node(NodeBucket, "Backup Bucket", KindBucket, ClusterStorage)
	b.flow(NodeUploader, NodeBucket, LabelPutObject, StyleSolid, "darkorange")

	if fs.Encryption || fs.PAB {
		b.cluster(ClusterSecurity, "Security & Compliance", ClusterStorage)
		if fs.Encryption {
			b.annotate(NodeEncryption, "SSE-S3\nEncryption", ClusterSecurity)
		}
		if fs.PAB {
			b.annotate(NodePublicAccess, "Block Public\nAccess", ClusterSecurity)
		}
	}

	if fs.Versioning || fs.Lifecycle {
		b.cluster(ClusterManagement, "Data Management", ClusterStorage)
		if fs.Versioning {
			b.annotate(NodeVersioning, "Versioning\nEnabled", ClusterManagement)
		}
		if fs.Lifecycle {
			b.annotate(NodeLifecycle, "Lifecycle\nExpiration", ClusterManagement)
		}
	}
}

func (b *builder) events(fs feature.Set) {
	b.cluster(ClusterEvents, "Event Driven Layer", ClusterEnvironment)
	b.node(NodeTopic, "SNS Topic", KindTopic, ClusterEvents)

	switch {
	case fs.TopicPolicy:
		// The policy guards the topic: bucket → policy → topic.
		b.node(NodePolicy, "Topic Policy\n(Allow S3 Only)", KindPolicy, ClusterEvents)
		if fs.S3 {
			b.flow(NodeBucket, NodePolicy, LabelObjectCreated, StyleDashed, "firebrick")
			b.flow(NodePolicy, NodeTopic, "", StyleSolid, "")
		}
	case fs.S3:
		b.flow(NodeBucket, NodeTopic, "", StyleSolid, "")
	}

	if fs.Subscription {
		b.node(NodeSubscriber, "Email Subscriber", KindSubscriber, ClusterEvents)
		b.flow(NodeTopic, NodeSubscriber, LabelNotification, StyleSolid, "blue")
	}
}

type builder struct {
	spec *Spec
}

func newBuilder() *builder {
	attrs := make(map[string]string, len(graphAttrs))
	for k, v := range graphAttrs {
		attrs[k] = v
	}
	return &builder{spec: &Spec{
		Title:     Title,
		Direction: LeftToRight,
		Attrs:     attrs,
		Clusters:  []Cluster{},
		Nodes:     []Node{},
		Edges:     []Edge{},
	}}
}

func (b *builder) cluster(id, label, parent string) {
	b.spec.Clusters = append(b.spec.Clusters, Cluster{ID: id, Label: label, Parent: parent})
}

func (b *builder) node(id, label string, kind NodeKind, cluster string) {
	b.spec.Nodes = append(b.spec.Nodes, Node{ID: id, Label: label, Kind: kind, Cluster: cluster})
}

func (b *builder) flow(from, to, label, style, color string) {
	b.spec.Edges = append(b.spec.Edges, Edge{From: from, To: to, Label: label, Kind: EdgeFlow, Style: style, Color: color})
}

// annotate adds a configuration node joined to the bucket by a dotted association.
func (b *builder) annotate(id, label, cluster string) {
	b.node(id, label, KindAnnotation, cluster)
	b.spec.Edges = append(b.spec.Edges, Edge{From: NodeBucket, To: id, Kind: EdgeAssociation, Style: StyleDotted})
}
