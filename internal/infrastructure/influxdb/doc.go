// Package influxdb records device timeline activity in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library and writes two
// measurements:
//
//	export_runs         one point per export (tags: format, result)
//	collection_changes  one point per mutation (tags: action)
//
// The integration is off by default. Connect returns ErrDisabled unless
// influxdb.enabled is set.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil && !errors.Is(err, influxdb.ErrDisabled) {
//	    return err
//	}
//	defer client.Close()
//
//	renderer.SetRecorder(client)
//
// # Thread Safety
//
// All methods are safe for concurrent use. Writes are non-blocking and
// batched according to batch_size and flush_interval. Batch errors are
// delivered to the SetOnError callback.
package influxdb
