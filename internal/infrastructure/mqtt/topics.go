package mqtt

import "strings"

// DefaultTopicPrefix is used when mqtt.topic_prefix is empty.
const DefaultTopicPrefix = "devicetimeline"

// Topics builds the service's topic names under a prefix.
//
//	topics := mqtt.NewTopics("home/devicetimeline")
//	topics.CollectionChanged() // "home/devicetimeline/collection/changed"
type Topics struct {
	prefix string
}

// NewTopics returns topic builders for prefix. Surrounding slashes are
// trimmed and an empty prefix falls back to DefaultTopicPrefix.
func NewTopics(prefix string) Topics {
	p := strings.Trim(prefix, "/")
	if p == "" {
		p = DefaultTopicPrefix
	}
	return Topics{prefix: p}
}

// Prefix returns the normalized prefix.
func (t Topics) Prefix() string {
	return t.prefix
}

// Status is the retained online/offline topic, also used for the LWT.
func (t Topics) Status() string {
	return t.prefix + "/status"
}

// CollectionChanged carries one message per collection mutation.
func (t Topics) CollectionChanged() string {
	return t.prefix + "/collection/changed"
}

// ExportCompleted carries one message per finished export.
func (t Topics) ExportCompleted() string {
	return t.prefix + "/export/completed"
}

// All is the wildcard matching every topic the service publishes.
func (t Topics) All() string {
	return t.prefix + "/#"
}
