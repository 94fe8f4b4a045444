// Package mqtt publishes device timeline events to an MQTT broker.
//
// The service is the only publisher. Other systems (dashboards, home
// automation, archiving jobs) subscribe to learn when the collection changes
// or an export finishes. The broker is optional: Connect returns ErrDisabled
// unless mqtt.enabled is set, and callers continue without it.
//
// # Topics
//
// All topics sit under the configured prefix (default "devicetimeline"):
//
//	{prefix}/status              retained online/offline status, also the LWT
//	{prefix}/collection/changed  one ChangeEvent per mutation
//	{prefix}/export/completed    one message per finished export
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if errors.Is(err, mqtt.ErrDisabled) {
//	    // run without a broker
//	}
//	defer client.Close()
//
//	topic := client.Topics().CollectionChanged()
//	err = client.PublishJSON(topic, event)
//
// # Security
//
// Enable cfg.Broker.TLS outside local development. Credentials are never
// logged.
package mqtt
