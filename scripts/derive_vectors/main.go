// derive_vectors prints Baby Jubjub derivation vectors for a BIP39 mnemonic.
//
// Usage:
//
//	go run ./scripts/derive_vectors "your seed phrase here" "m/0'/1/2'" m/0/1
//
// Or with stdin:
//
//	echo "your seed phrase" | go run ./scripts/derive_vectors "m/0'/1/2'"
//
// With no paths the master key (m) is printed. The output is meant for
// regenerating golden values in tests; never run it on a real wallet phrase.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/complex-gh/babyjubhd"
)

func main() {
	var mnemonic string
	var paths []string

	for _, arg := range os.Args[1:] {
		if _, err := babyjubhd.ParsePath(arg); err == nil {
			paths = append(paths, arg)
			continue
		}
		mnemonic = strings.TrimSpace(mnemonic + " " + arg)
	}

	if mnemonic == "" {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			mnemonic = strings.TrimSpace(scanner.Text())
		}
	}

	if mnemonic == "" {
		fmt.Fprintln(os.Stderr, "Usage: derive_vectors \"seed phrase\" [path...]")
		fmt.Fprintln(os.Stderr, "   or: echo \"seed phrase\" | derive_vectors [path...]")
		os.Exit(1)
	}
	if len(paths) == 0 {
		paths = []string{"m"}
	}

	src := babyjubhd.Mnemonic{Phrase: mnemonic}
	for _, path := range paths {
		priv, err := babyjubhd.DerivePrivateKeyFromPath(src, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			os.Exit(1)
		}
		chainCode := priv.ChainCode()
		fmt.Printf("%s\n  k: %s\n  c: %x\n  K: %s\n", path, priv.ScalarHex(), chainCode[:], priv.Public().CompressedHex())
		priv.Zero()
	}
}
