/*
Package observability provides tools for monitoring the Turing machine engine.

It turns the engine's lifecycle hooks into Prometheus metrics: runs by final status,
steps per run, tape size at halt and runs cut short by a step limit.
*/
package observability
