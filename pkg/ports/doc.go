/*
Package ports defines the driven ports (interfaces) of the Turing machine service.

These interfaces decouple the engine and its drivers from external implementations,
so runs can be kept in memory, on disk or in Redis without changing callers.

# Key Interfaces

  - RunStore: Responsible for persisting and loading finished run records.
*/
package ports
