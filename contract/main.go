package main

// The contract is a reactor-style module: all work happens through the
// exported entrypoints. main exists only to satisfy the linker.
func main() {}
