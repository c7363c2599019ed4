//go:build test
// +build test

package sdk

func StateSetObject(key, value string)                                {}
func StateGetObject(key string) *string                               { return nil }
func Abort(msg string)                                                { panic(msg) }
func Log(msg string)                                                  {}
func GetEnv() Env                                                     { return Env{} }
func GetEnvKey(key string) *string                                    { return nil }
func ContractCall(contract, method, payload, callback, cbArgs string) {}
func CallResults() []CallResult                                       { return nil }
func HiveDraw(amount int64, asset Asset)                              {}
func HiveTransfer(to Address, amount int64, asset Asset)              {}
