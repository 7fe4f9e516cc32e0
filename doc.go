/*
Package weakcmd provides callbacks that don't keep their receivers alive, and gated commands built on them.
It's intended for binding glue that outlives the objects it calls into, where holding a strong reference would leak them.

  - Package weakfn wraps functions and methods in weak callables, with type-erased dispatch for mixed collections.
  - Package command builds a gated Command with lock-free change subscriptions and a process-wide broadcaster.
  - Package syncx has the small concurrency helpers the others use.
  - Packages cli and env support the cmd/weakcmd tool with sub-commands and environment defaults.

Run cmd/weakcmd for self-checking scenarios that exercise all of this.
*/
package weakcmd
