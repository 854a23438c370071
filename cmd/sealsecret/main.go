package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"webhook-examples/internal/crypto"
)

// sealsecret seals webhook credentials for use in environment files. The
// value is read from stdin so it stays out of shell history, the passphrase
// comes from SECRETS_ENCRYPTION_KEY.
//
//	echo -n 's3cr3t' | SECRETS_ENCRYPTION_KEY=... sealsecret
//	echo 'enc:...' | SECRETS_ENCRYPTION_KEY=... sealsecret -open
func main() {
	open := flag.Bool("open", false, "open a sealed value instead of sealing")
	flag.Parse()

	passphrase := os.Getenv("SECRETS_ENCRYPTION_KEY")
	if passphrase == "" {
		log.Fatal("SECRETS_ENCRYPTION_KEY must be set")
	}

	sealer, err := crypto.NewSealer(passphrase)
	if err != nil {
		log.Fatal(err)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal("failed to read value from stdin: ", err)
	}

	value := strings.TrimRight(string(data), "\r\n")
	if value == "" {
		log.Fatal("no value provided on stdin")
	}

	if *open {
		opened, err := sealer.Open(value)
		if err != nil {
			log.Fatal("failed to open sealed value: ", err)
		}
		fmt.Println(opened)
		return
	}

	sealed, err := sealer.Seal(value)
	if err != nil {
		log.Fatal("failed to seal value: ", err)
	}
	fmt.Println(sealed)
}
