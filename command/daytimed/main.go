// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"
	"golang.org/x/time/rate"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const (
	// limit on outgoing datagrams
	repliesPerSecond = 100
	replyBurst       = 20

	// ignore oversize requests, the reply never depends on content
	requestBufferSize = 64
)

func main() {
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "daytimed"
	app.Usage = "UDP daytime server"
	app.Version = version

	app.Flags = []cli.Flag{
		cli.StringSliceFlag{
			Name:  "listen, l",
			Usage: " UDP `HOST:PORT` to listen on (repeatable)",
		},
		cli.StringFlag{
			Name:  "log-directory, d",
			Value: ".",
			Usage: " directory for the log file `DIR`",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose logging",
		},
		cli.BoolFlag{
			Name:  "quiet, q",
			Usage: " suppress console messages",
		},
	}

	app.Action = runServer

	if err := app.Run(os.Args); nil != err {
		exitwithstatus.Message("daytimed: error: %s", err)
	}
}

func runServer(c *cli.Context) error {

	addresses := c.StringSlice("listen")
	if 0 == len(addresses) {
		addresses = []string{"127.0.0.1:13"}
	}

	level := "error"
	if c.Bool("verbose") {
		level = "debug"
	}
	logConfiguration := logger.Configuration{
		Directory: c.String("log-directory"),
		File:      "daytimed.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	}
	if err := logger.Initialise(logConfiguration); nil != err {
		return err
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)

	shutdown := make(chan struct{})
	wg := sync.WaitGroup{}

	connections := make([]*net.UDPConn, 0, len(addresses))
	for _, address := range addresses {
		udpAddress, err := net.ResolveUDPAddr("udp", address)
		if nil != err {
			log.Criticalf("invalid listen address: %q error: %s", address, err)
			return err
		}
		conn, err := net.ListenUDP("udp", udpAddress)
		if nil != err {
			log.Criticalf("listen: %q error: %s", address, err)
			return err
		}
		log.Infof("listening on: %s", conn.LocalAddr())
		connections = append(connections, conn)

		wg.Add(1)
		go func(conn *net.UDPConn) {
			defer wg.Done()
			serve(conn, logger.New("daytime"), shutdown)
		}(conn)
	}

	if !c.Bool("quiet") {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if !c.Bool("quiet") {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	close(shutdown)
	for _, conn := range connections {
		conn.Close()
	}
	wg.Wait()

	return nil
}

// answer datagrams on one socket until it is closed
func serve(conn *net.UDPConn, log *logger.L, shutdown <-chan struct{}) {

	limiter := rate.NewLimiter(repliesPerSecond, replyBurst)
	buffer := make([]byte, requestBufferSize)

	for {
		_, remote, err := conn.ReadFromUDP(buffer)
		if nil != err {
			select {
			case <-shutdown:
				return
			default:
			}
			log.Errorf("read error: %s", err)
			continue
		}

		if !limiter.Allow() {
			log.Warnf("reply limit exceeded, dropping request from: %s", remote)
			continue
		}

		daytime := time.Now().Format(time.ANSIC) + "\n"
		if _, err := conn.WriteToUDP([]byte(daytime), remote); nil != err {
			log.Errorf("write to: %s error: %s", remote, err)
			continue
		}
		log.Debugf("replied to: %s", remote)
	}
}
