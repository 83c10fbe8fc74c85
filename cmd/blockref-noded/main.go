// blockref-noded serves an in-process storage node over gRPC, mainly for
// local development and integration testing of the grpc backend.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"blockref.dev/refstore/cas"
	"blockref.dev/refstore/network/grpcnode"
	"blockref.dev/refstore/network/localnode"
)

func main() {
	fs := flag.NewFlagSet("blockref-noded", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7440", "listen address")
	dir := fs.String("dir", "", "blob directory (empty for in-memory)")
	price := fs.String("price-per-byte", "1000", "atomic price per uploaded byte")
	balance := fs.String("balance", "0", "initial account balance in atomic units")

	_ = fs.Parse(os.Args[1:])

	var blobs cas.Store
	if *dir != "" {
		d, err := cas.NewDir(*dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		blobs = d
	}

	node, err := localnode.New(localnode.Options{
		Store:        blobs,
		PricePerByte: *price,
		Balance:      *balance,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcnode.RegisterNodeServer(s, &grpcnode.Server{Node: node})

	fmt.Fprintf(os.Stderr, "blockref-noded listening on %s\n", lis.Addr().String())
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
