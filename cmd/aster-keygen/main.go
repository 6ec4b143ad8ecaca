package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"aster-ledger/go-sdk/internal/config"
	"aster-ledger/go-sdk/internal/keystore"
	"aster-ledger/go-sdk/internal/platform/legacydiag"
	"aster-ledger/go-sdk/internal/platform/privacylog"
	"aster-ledger/go-sdk/pkg/keypair"
	"aster-ledger/go-sdk/pkg/mnemonic"
)

const (
	exitOK           = 0
	exitInvalidInput = 10
	exitIOFailed     = 20
	exitAuthFailed   = 30
	exitVerifyFailed = 40
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitInvalidInput)
	}

	switch os.Args[1] {
	case "new":
		runNew(os.Args[2:])
	case "phrase":
		runPhrase(os.Args[2:])
	case "derive":
		runDerive(os.Args[2:])
	case "inspect":
		runInspect(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	case "convert-legacy":
		runConvertLegacy(os.Args[2:])
	default:
		printUsage()
		os.Exit(exitInvalidInput)
	}
}

func setup(configPath string) config.Resolved {
	cfg := config.LoadFromPath(configPath)
	handler := privacylog.WrapHandler(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(slog.New(handler))
	legacydiag.SetEnabled(cfg.LegacyWarnings)
	return cfg
}

func runNew(args []string) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.yaml (optional)")
	save := fs.String("save", "", "key name to store under the keystore directory")
	passphrase := fs.String("passphrase", "", "keystore passphrase (required with -save)")
	if err := fs.Parse(args); err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	cfg := setup(*configPath)

	kp, err := keypair.Random()
	if err != nil {
		writeStderrln(err.Error(), exitIOFailed)
	}
	out := map[string]any{"address": kp.Address()}
	if *save != "" {
		path := keyFilePath(cfg, *save)
		if err := keystore.Save(path, *passphrase, keystore.Record{Address: kp.Address(), Seed: kp.Seed()}); err != nil {
			writeStderrln(err.Error(), exitIOFailed)
		}
		out["keyfile"] = path
	} else {
		out["seed"] = kp.Seed()
	}
	mustPrintJSON(out)
}

func runPhrase(args []string) {
	fs := flag.NewFlagSet("phrase", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.yaml (optional)")
	entropy := fs.Int("entropy", 0, "entropy bits (default from config)")
	language := fs.String("language", "", "wordlist language (default from config)")
	if err := fs.Parse(args); err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	cfg := setup(*configPath)
	bits, lang := cfg.EntropyBits, cfg.MnemonicLanguage
	if *entropy != 0 {
		bits = *entropy
	}
	if *language != "" {
		lang = *language
	}

	phrase, err := mnemonic.NewPhrase(bits, lang)
	if err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	mustPrintJSON(map[string]any{"phrase": phrase, "language": lang, "entropy_bits": bits})
}

func runDerive(args []string) {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.yaml (optional)")
	phrase := fs.String("phrase", "", "mnemonic phrase")
	passphrase := fs.String("passphrase", "", "optional derivation passphrase")
	language := fs.String("language", "", "wordlist language (default from config)")
	index := fs.Uint("index", 0, "keypair index")
	save := fs.String("save", "", "key name to store under the keystore directory")
	storePass := fs.String("store-passphrase", "", "keystore passphrase (required with -save)")
	if err := fs.Parse(args); err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	cfg := setup(*configPath)
	lang := cfg.MnemonicLanguage
	if *language != "" {
		lang = *language
	}
	if strings.TrimSpace(*phrase) == "" {
		writeStderrln("phrase is required", exitInvalidInput)
	}

	kp, err := keypair.FromMnemonic(*phrase, *passphrase, lang, uint32(*index))
	if err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	out := map[string]any{"address": kp.Address(), "index": *index}
	if *save != "" {
		path := keyFilePath(cfg, *save)
		if err := keystore.Save(path, *storePass, keystore.Record{Address: kp.Address(), Seed: kp.Seed()}); err != nil {
			writeStderrln(err.Error(), exitIOFailed)
		}
		out["keyfile"] = path
	} else {
		out["seed"] = kp.Seed()
	}
	mustPrintJSON(out)
}

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.yaml (optional)")
	address := fs.String("address", "", "strkey address to inspect")
	seed := fs.String("seed", "", "strkey seed to inspect")
	legacySeed := fs.String("legacy-seed", "", "legacy base58 seed to inspect")
	keyfile := fs.String("keyfile", "", "keystore file to inspect")
	passphrase := fs.String("passphrase", "", "keystore passphrase")
	if err := fs.Parse(args); err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	cfg := setup(*configPath)

	id, err := resolveIdentity(cfg, *address, *seed, *legacySeed, *keyfile, *passphrase)
	if err != nil {
		failWith(err)
	}

	hint := id.Hint()
	record, err := id.PublicKeyRecord().MarshalBase64()
	if err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	mustPrintJSON(map[string]any{
		"address":        id.Address(),
		"legacy_address": id.LegacyAddress(),
		"hint":           hex.EncodeToString(hint[:]),
		"public_key_xdr": record,
	})
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.yaml (optional)")
	seed := fs.String("seed", "", "strkey seed to sign with")
	keyfile := fs.String("keyfile", "", "keystore file to sign with")
	passphrase := fs.String("passphrase", "", "keystore passphrase")
	data := fs.String("data", "", "payload to sign (UTF-8 text)")
	in := fs.String("in", "", "file with the payload to sign")
	decorated := fs.Bool("decorated", false, "also emit the decorated signature record")
	if err := fs.Parse(args); err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	cfg := setup(*configPath)

	payload, err := resolvePayload(*data, *in)
	if err != nil {
		writeStderrln(err.Error(), exitIOFailed)
	}
	id, err := resolveIdentity(cfg, "", *seed, "", *keyfile, *passphrase)
	if err != nil {
		failWith(err)
	}

	sig, err := id.Sign(payload)
	if err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	out := map[string]any{
		"address":   id.Address(),
		"signature": base64.StdEncoding.EncodeToString(sig),
	}
	if *decorated {
		ds, err := id.SignDecorated(payload)
		if err != nil {
			writeStderrln(err.Error(), exitInvalidInput)
		}
		encoded, err := ds.MarshalBase64()
		if err != nil {
			writeStderrln(err.Error(), exitInvalidInput)
		}
		out["decorated_xdr"] = encoded
	}
	mustPrintJSON(out)
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.yaml (optional)")
	address := fs.String("address", "", "strkey address of the signer")
	data := fs.String("data", "", "payload that was signed (UTF-8 text)")
	in := fs.String("in", "", "file with the payload that was signed")
	signature := fs.String("signature", "", "base64 signature")
	if err := fs.Parse(args); err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	setup(*configPath)

	payload, err := resolvePayload(*data, *in)
	if err != nil {
		writeStderrln(err.Error(), exitIOFailed)
	}
	pub, err := keypair.ParseAddress(*address)
	if err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	sig, err := base64.StdEncoding.DecodeString(*signature)
	if err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}

	valid := pub.Verify(payload, sig)
	mustPrintJSON(map[string]any{"valid": valid})
	if !valid {
		os.Exit(exitVerifyFailed)
	}
}

func runConvertLegacy(args []string) {
	fs := flag.NewFlagSet("convert-legacy", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.yaml (optional)")
	legacySeed := fs.String("legacy-seed", "", "legacy base58 seed to convert")
	if err := fs.Parse(args); err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	setup(*configPath)
	if strings.TrimSpace(*legacySeed) == "" {
		writeStderrln("legacy-seed is required", exitInvalidInput)
	}

	kp, err := keypair.ParseLegacySeed(*legacySeed)
	if err != nil {
		writeStderrln(err.Error(), exitInvalidInput)
	}
	mustPrintJSON(map[string]any{
		"address":        kp.Address(),
		"seed":           kp.Seed(),
		"legacy_address": kp.LegacyAddress(),
	})
}

func resolveIdentity(cfg config.Resolved, address, seed, legacySeed, keyfile, passphrase string) (keypair.Identity, error) {
	switch {
	case address != "":
		return keypair.ParseAddress(address)
	case seed != "":
		return keypair.ParseSeed(seed)
	case legacySeed != "":
		return keypair.ParseLegacySeed(legacySeed)
	case keyfile != "":
		path := keyfile
		if !strings.ContainsRune(path, os.PathSeparator) {
			path = keyFilePath(cfg, keyfile)
		}
		rec, err := keystore.Load(path, passphrase)
		if err != nil {
			return nil, err
		}
		return keypair.ParseSeed(rec.Seed)
	default:
		return nil, fmt.Errorf("one of -address, -seed, -legacy-seed or -keyfile is required")
	}
}

func resolvePayload(data, in string) ([]byte, error) {
	if in != "" {
		return os.ReadFile(in)
	}
	if data == "" {
		return nil, fmt.Errorf("one of -data or -in is required")
	}
	return []byte(data), nil
}

func keyFilePath(cfg config.Resolved, name string) string {
	if !strings.HasSuffix(name, ".key") {
		name += ".key"
	}
	return filepath.Join(cfg.KeystoreDir, name)
}

func mustPrintJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		writeStderrln(err.Error(), exitIOFailed)
	}
	os.Exit(exitOK)
}

func failWith(err error) {
	code := exitInvalidInput
	if errors.Is(err, keystore.ErrAuthFailed) {
		code = exitAuthFailed
	}
	writeStderrln(err.Error(), code)
}

func writeStderrln(msg string, code int) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: aster-keygen <command> [flags]

commands:
  new              generate a random keypair
  phrase           generate a mnemonic phrase
  derive           derive a keypair from a mnemonic phrase
  inspect          show the public facts of a key
  sign             sign a payload
  verify           verify a signature
  convert-legacy   convert a legacy base58 seed to strkey`)
}
