package main

import "github.com/Alijeyrad/hospital_records/cmd"

func main() {
	cmd.Execute()
}
