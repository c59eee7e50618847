// Command keygen mints an operator API key for the restricted rosterd
// endpoints. The raw key goes to the operator; the bcrypt hash goes into
// the server's ADMIN_KEY_HASHES setting.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/vexlane/rosterd/internal/auth"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost for the key hash")
	flag.Parse()

	svc := auth.NewService(nil, *cost)

	rawKey, hash, err := svc.GenerateKey()
	if err != nil {
		fmt.Fprintln(os.Stderr, "keygen:", err)
		os.Exit(1)
	}

	fmt.Println("API key (give to the operator, shown once):")
	fmt.Println("  " + rawKey)
	fmt.Println("Hash (append to ADMIN_KEY_HASHES):")
	fmt.Println("  " + hash)
}
