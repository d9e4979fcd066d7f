/*
Package config holds the settings of an ipgeotag run, loaded from an optional
YAML file on top of built-in defaults.

A configuration file looks like this, with all settings being optional:

	workers: 20
	unknown: 火星⭐
	honor_tags: true
	failed: failed.txt
	port:
	  strategy: probe      # fixed, random, or probe
	  port: 443            # fixed port, and fallback port when probing
	  ports: [443, 2053, 2087, 2083, 8443, 2096]
	  timeout: 1s          # per probed port
	  socks5: 127.0.0.1:1080
	geo:
	  timeout: 5s          # per provider
	  cache: true
	  providers:
	    - kind: http
	      url: http://ip-api.com/json/{ip}?lang=zh-CN
	      fields: [country]
	    - kind: http
	      url: https://whois.pconline.com.cn/ipJson.jsp?ip={ip}&json=true
	      fields: [pro, city]
	      charset: gbk
	    - kind: dns
	      server: 8.8.8.8:53
	    - kind: mmdb
	      path: GeoLite2-Country.mmdb
	      lang: en
	jobs:
	  - input: https://example.org/ip.txt
	    output: best.txt

Providers and jobs given in a configuration file replace the default ones.
*/
package config
