package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/rs/zerolog"

	"example.com/chaincode/medrec/internal/contract"
)

func main() {
	log := newLogger()

	chaincode, err := contractapi.NewChaincode(contract.New(log))
	if err != nil {
		log.Fatal().Err(err).Msg("create chaincode")
	}

	chaincode.Info.Title = "medrec"
	chaincode.Info.Version = "1.0"

	// With CHAINCODE_SERVER_ADDRESS set the chaincode runs as an external
	// service the peer connects to; otherwise the peer launches it and
	// Start handshakes over the inherited connection.
	address := os.Getenv("CHAINCODE_SERVER_ADDRESS")
	if address == "" {
		if err := chaincode.Start(); err != nil {
			log.Fatal().Err(err).Msg("start chaincode")
		}
		return
	}

	tlsProps, err := tlsProperties()
	if err != nil {
		log.Fatal().Err(err).Msg("load tls config")
	}

	server := &shim.ChaincodeServer{
		CCID:     os.Getenv("CHAINCODE_ID"),
		Address:  address,
		CC:       chaincode,
		TLSProps: tlsProps,
	}

	log.Info().Str("address", address).Str("ccid", server.CCID).Msg("starting chaincode service")
	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("start chaincode service")
	}
}

func newLogger() zerolog.Logger {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	level := os.Getenv("MEDREC_LOG_LEVEL")
	if level == "" {
		return log.Level(zerolog.InfoLevel)
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
		return log.Level(zerolog.InfoLevel)
	}
	return log.Level(parsed)
}

func tlsProperties() (shim.TLSProperties, error) {
	disabled := true
	if v := os.Getenv("CHAINCODE_TLS_DISABLED"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return shim.TLSProperties{}, fmt.Errorf("parse CHAINCODE_TLS_DISABLED: %w", err)
		}
		disabled = parsed
	}
	if disabled {
		return shim.TLSProperties{Disabled: true}, nil
	}

	key, err := os.ReadFile(os.Getenv("CHAINCODE_TLS_KEY"))
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("read tls key: %w", err)
	}
	cert, err := os.ReadFile(os.Getenv("CHAINCODE_TLS_CERT"))
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("read tls cert: %w", err)
	}

	props := shim.TLSProperties{Key: key, Cert: cert}
	if ca := os.Getenv("CHAINCODE_CLIENT_CA_CERT"); ca != "" {
		caBytes, err := os.ReadFile(ca)
		if err != nil {
			return shim.TLSProperties{}, fmt.Errorf("read client ca cert: %w", err)
		}
		props.ClientCACerts = caBytes
	}
	return props, nil
}
