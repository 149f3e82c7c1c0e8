/*
Package observability provides lifecycle hooks for monitoring a navigator.

Metrics exports navigation counters and gauges to Prometheus, LoggingHooks
writes one structured record per event, and Combine fans a single hook set
out to several consumers.
*/
package observability
