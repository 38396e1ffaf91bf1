// Copyright © 2023 Crypto Coin World

package main

import (
	"github.com/crypto-coin-world/ipvc/cmd/ipvc/cmd"
)

func main() {
	cmd.Execute()
}
