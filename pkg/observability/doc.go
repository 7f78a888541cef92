/*
Package observability turns runtime lifecycle hooks into Prometheus metrics and
structured log lines.

Both are plain domain.LifecycleHooks values, so they compose with Merge and
plug into actiongraph.WithLifecycleHooks.
*/
package observability
