// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/container/session"
)

const (
	fileWatcherLoggerPrefix = "file-watcher"
	reloaderLoggerPrefix    = "config-reload"
)

type WatcherChannel struct {
	change chan struct{}
	remove chan struct{}
}

type fileWatcher struct {
	log      *logger.L
	channels WatcherChannel
	watcher  *fsnotify.Watcher
	filePath string
}

func newFileWatcher(targetFile string, log *logger.L, channels WatcherChannel) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		return nil, err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, errors.New("file does not exist")
	}

	return &fileWatcher{
		log:      log,
		watcher:  watcher,
		channels: channels,
		filePath: filePath,
	}, nil
}

func (w *fileWatcher) Start() error {
	err := w.watcher.Add(w.filePath)
	if nil != err {
		w.log.Errorf("watcher add error: %v, abort", err)
		return err
	}

	go func() {
		for event := range w.watcher.Events {
			w.log.Debugf("file event: %v", event)

			if watcherEventFileRemove(event) {
				w.log.Errorf("file %s removed, stop", w.filePath)
				w.sendEvent(w.channels.remove, "remove")
				return
			}

			if path.Base(event.Name) != path.Base(filepath.Clean(w.filePath)) {
				continue
			}

			if watcherEventFileChange(event) {
				w.sendEvent(w.channels.change, "change")
			}
		}
	}()

	return nil
}

func (w *fileWatcher) sendEvent(ch chan<- struct{}, name string) {
	if len(ch) < cap(ch) {
		ch <- struct{}{}
	} else {
		w.log.Infof("event channel %s full, discard event", name)
	}
}

func watcherEventFileRemove(event fsnotify.Event) bool {
	return event.Name == "" || event.Op&fsnotify.Remove == fsnotify.Remove
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}

// re-read the configuration when the file changes and apply the
// settings that can change while running
//
// listen addresses, certificates and capacity are fixed at start;
// only the idle timeout is applied to the running hub
func startConfigReloader(fileName string, channels WatcherChannel) {
	log := logger.New(reloaderLoggerPrefix)

	go func() {
		for {
			select {
			case <-channels.change:
				// editors fire several events per save, let them settle
				time.Sleep(time.Second)
				options, err := getConfiguration(fileName)
				if nil != err {
					log.Errorf("failed to re-read configuration from: %s error: %s", fileName, err)
					continue
				}
				session.SetIdleTimeout(time.Duration(options.IdleTimeout) * time.Second)
				log.Info("configuration reloaded")

			case <-channels.remove:
				log.Warn("configuration file removed, keeping current settings")
				return
			}
		}
	}()
}
