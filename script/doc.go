// Package script drives a sequencer Builder from a Starlark build script.
//
// Every builder operation is a predeclared builtin taking the statement or
// block name first, the engine second, and an optional trailing delay in ns:
//
//	start_sync_multi_sequence_block("Init")
//	set_register("Zero ctr", "A", "ctr", 0)
//	end_sync_multi_sequence_block()
//
//	start_sync_while_register("Loop", "A", "ctr", "LESS_THAN", 3)
//	start_sync_multi_sequence_block("Body", delay=260)
//	execute_actions("Trigger", "A", ["t1"])
//	increment_register("Increment ctr", "A", "ctr")
//	end_sync_multi_sequence_block()
//	end_sync_while()
//
// Operands accept an int literal or the name of a sequencer register of the
// same engine. Comparisons accept a comparator name or symbol. Constants of
// the system descriptor are predeclared, and available through constant().
package script
